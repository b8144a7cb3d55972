package models

type Config struct {
	Debug          bool   `yaml:"debug" envconfig:"RNADNAVAR_DEBUG"`
	SemVer         string `yaml:"semver" envconfig:"RNADNAVAR_SERVICE_SEMVER" default:"0.1.0"`
	ServiceContact string `yaml:"serviceContact" envconfig:"RNADNAVAR_SERVICE_CONTACT"`

	Api struct {
		Url  string `yaml:"url"`
		Port string `yaml:"port" envconfig:"RNADNAVAR_API_INTERNAL_PORT" default:"5000"`
	} `yaml:"api"`

	Platform struct {
		ExecutionToken      string `yaml:"executionToken" envconfig:"FLYTE_INTERNAL_EXECUTION_ID"`
		AuthorizationScheme string `yaml:"authorizationScheme" envconfig:"RNADNAVAR_AUTHORIZATION_SCHEME" default:"Latch-Execution-Token"`
		DispatcherUrl       string `yaml:"dispatcherUrl" envconfig:"RNADNAVAR_DISPATCHER_URL" default:"http://nf-dispatcher-service.flyte.svc.cluster.local"`
		StorageGiB          int    `yaml:"storageGiB" envconfig:"RNADNAVAR_STORAGE_GIB" default:"100"`
		ExecutionName       string `yaml:"executionName" envconfig:"RNADNAVAR_EXECUTION_NAME"`
		ExecutionInfoUrl    string `yaml:"executionInfoUrl" envconfig:"RNADNAVAR_EXECUTION_INFO_URL" default:"https://vacuole.latch.bio/graphql"`
		DataApiUrl          string `yaml:"dataApiUrl" envconfig:"RNADNAVAR_DATA_API_URL" default:"https://nucleus.latch.bio"`
	} `yaml:"platform"`

	Staging struct {
		SourceDirectory string   `yaml:"sourceDirectory" envconfig:"RNADNAVAR_STAGING_SOURCE" default:"/root"`
		SharedDirectory string   `yaml:"sharedDirectory" envconfig:"RNADNAVAR_SHARED_WORKDIR" default:"/nf-workdir"`
		IgnoreList      []string `yaml:"ignoreList" envconfig:"RNADNAVAR_STAGING_IGNORE" default:"latch,.latch,nextflow,.nextflow,work,results,miniconda,anaconda3,mambaforge"`
	} `yaml:"staging"`

	Engine struct {
		Binary             string `yaml:"binary" envconfig:"RNADNAVAR_ENGINE_BINARY" default:"/root/nextflow"`
		Manifest           string `yaml:"manifest" envconfig:"RNADNAVAR_ENGINE_MANIFEST" default:"main.nf"`
		Profile            string `yaml:"profile" envconfig:"RNADNAVAR_ENGINE_PROFILE" default:"docker"`
		ConfigFile         string `yaml:"configFile" envconfig:"RNADNAVAR_ENGINE_CONFIG" default:"latch.config"`
		Home               string `yaml:"home" envconfig:"RNADNAVAR_NXF_HOME" default:"/root/.nextflow"`
		Opts               string `yaml:"opts" envconfig:"RNADNAVAR_NXF_OPTS" default:"-Xms2048M -Xmx8G -XX:ActiveProcessorCount=4"`
		DisableCheckLatest bool   `yaml:"disableCheckLatest" envconfig:"RNADNAVAR_NXF_DISABLE_CHECK_LATEST" default:"true"`
		LogFile            string `yaml:"logFile" envconfig:"RNADNAVAR_ENGINE_LOG_FILE" default:".nextflow.log"`
		EmitDefaults       bool   `yaml:"emitDefaults" envconfig:"RNADNAVAR_EMIT_DEFAULTS"`
	} `yaml:"engine"`

	Logs struct {
		RemoteRoot string `yaml:"remoteRoot" envconfig:"RNADNAVAR_LOGS_REMOTE_ROOT" default:"latch:///your_log_dir"`
		FileName   string `yaml:"fileName" envconfig:"RNADNAVAR_LOGS_FILE_NAME" default:"nextflow.log"`
	} `yaml:"logs"`

	Elasticsearch struct {
		Url       string `yaml:"url" envconfig:"RNADNAVAR_ES_URL"`
		Username  string `yaml:"username" envconfig:"RNADNAVAR_ES_USERNAME"`
		Password  string `yaml:"password" envconfig:"RNADNAVAR_ES_PASSWORD"`
		RunsIndex string `yaml:"runsIndex" envconfig:"RNADNAVAR_ES_RUNS_INDEX" default:"runs"`
	} `yaml:"elasticsearch"`

	Sanitation struct {
		RunRetentionDays int    `yaml:"runRetentionDays" envconfig:"RNADNAVAR_RUN_RETENTION_DAYS" default:"30"`
		At               string `yaml:"at" envconfig:"RNADNAVAR_SANITATION_AT" default:"04:00:00"`
	} `yaml:"sanitation"`

	AuthX struct {
		IsAuthorizationEnabled bool   `yaml:"isAuthorizationEnabled" envconfig:"RNADNAVAR_AUTHZ_ENABLED"`
		AuthorizationUrl       string `yaml:"authorizationUrl" envconfig:"RNADNAVAR_AUTHZ_URL"`
	} `yaml:"authX"`
}
