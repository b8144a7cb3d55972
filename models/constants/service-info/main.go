package serviceInfo

import "fmt"

type ServiceInfo string

var (
	SERVICE_NAME        ServiceInfo = "nf-core/rnadnavar Parameter Service"
	SERVICE_WELCOME     ServiceInfo = "Welcome to the nf-core/rnadnavar parameter schema API!"
	SERVICE_DESCRIPTION ServiceInfo = "Parameter schema, command-line preview and run history for the nf-core/rnadnavar pipeline."

	SERVICE_ARTIFACT    ServiceInfo = "rnadnavar"
	SERVICE_VERSION     ServiceInfo = "0.1.0"
	SERVICE_TYPE_NO_VER ServiceInfo = ServiceInfo(fmt.Sprintf("bio.latch.nfcore:%s", SERVICE_ARTIFACT))
	SERVICE_ID          ServiceInfo = SERVICE_TYPE_NO_VER
	SERVICE_TYPE        ServiceInfo = ServiceInfo(fmt.Sprintf("%s:%s", SERVICE_TYPE_NO_VER, SERVICE_VERSION))

	// identifies the pipeline in remote log locations and run records
	PIPELINE_ID ServiceInfo = "nf_nf_core_rnadnavar"
)
