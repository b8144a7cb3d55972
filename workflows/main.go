package workflows

import (
	"github.com/latchbio-nfcore/rnadnavar/models"
	pt "github.com/latchbio-nfcore/rnadnavar/models/constants/parameter-type"
)

// PIPELINE_PARAMETERS is the nf-core/rnadnavar parameter schema. The slice
// order is the order in which flags are handed to the engine and must not
// change between releases.
var PIPELINE_PARAMETERS = []models.ParameterSpec{
	{
		Name:         "input",
		Type:         pt.String,
		SectionTitle: "Input/output options",
		Description:  "Path to comma-separated file containing information about the samples in the experiment.",
	},
	{
		Name:     "split_fastq",
		Type:     pt.Integer,
		Optional: true,
		Default:  50000000,
	},
	{
		Name:        "step",
		Type:        pt.String,
		Optional:    true,
		Default:     "mapping",
		Description: "Starting step",
	},
	{
		Name:        "outdir",
		Type:        pt.Directory,
		Description: "The output directory where the results will be saved. You have to use absolute paths to storage on Cloud infrastructure.",
		Output:      true,
	},
	{
		Name:        "save_mapped",
		Type:        pt.Boolean,
		Optional:    true,
		Description: "Save mapped files.",
	},
	{
		Name:        "save_bam_mapped",
		Type:        pt.Boolean,
		Optional:    true,
		Description: "Save mapped BAMs.",
	},
	{
		Name:        "save_output_as_bam",
		Type:        pt.Boolean,
		Optional:    true,
		Description: "Saves output from Markduplicates & Baserecalibration as BAM file instead of CRAM",
	},
	{
		Name:        "rna",
		Type:        pt.Boolean,
		Optional:    true,
		Default:     true,
		Description: "True if there are RNA samples to be analysed",
	},
	{
		Name:        "dna",
		Type:        pt.Boolean,
		Optional:    true,
		Default:     true,
		Description: "True if there are DNA samples to be analysed",
	},
	{
		Name:         "genome",
		Type:         pt.String,
		Optional:     true,
		Default:      "GRCh38",
		SectionTitle: "Reference genome options",
		Description:  "Name of iGenomes reference.",
	},
	{
		Name:        "hisat2_index",
		Type:        pt.String,
		Optional:    true,
		Description: "Path to STAR index folder or compressed file (tar.gz)",
	},
	{
		Name:        "splicesites",
		Type:        pt.File,
		Optional:    true,
		Description: "Splice sites file required for HISAT2.",
	},
	{
		Name:        "star_index",
		Type:        pt.String,
		Optional:    true,
		Description: "Path to STAR index folder or compressed file (tar.gz)",
	},
	{
		Name:        "star_twopass",
		Type:        pt.Boolean,
		Optional:    true,
		Description: "Enable STAR 2-pass mapping mode.",
	},
	{
		Name:        "star_ignore_sjdbgtf",
		Type:        pt.Boolean,
		Optional:    true,
		Description: "Do not use GTF file during STAR index buidling step",
	},
	{
		Name:        "star_max_memory_bamsort",
		Type:        pt.Integer,
		Optional:    true,
		Default:     0,
		Description: "Option to limit RAM when sorting BAM file. Value to be specified in bytes. If 0, will be set to the genome index size.",
	},
	{
		Name:        "star_bins_bamsort",
		Type:        pt.Integer,
		Optional:    true,
		Default:     50,
		Description: "Specifies the number of genome bins for coordinate-sorting",
	},
	{
		Name:        "star_max_collapsed_junc",
		Type:        pt.Integer,
		Optional:    true,
		Default:     1000000,
		Description: "Specifies the maximum number of collapsed junctions",
	},
	{
		Name:        "read_length",
		Type:        pt.Float,
		Optional:    true,
		Default:     76.0,
		Description: "Read length",
	},
	{
		Name:        "nucleotides_per_second",
		Type:        pt.Float,
		Optional:    true,
		Default:     200000.0,
		Description: "Estimate interval size.",
	},
	{
		Name:        "fasta",
		Type:        pt.File,
		Optional:    true,
		Description: "Path to FASTA genome file.",
	},
	{
		Name:        "fasta_fai",
		Type:        pt.String,
		Optional:    true,
		Description: "Path to FASTA reference index.",
	},
	{
		Name:        "known_snps",
		Type:        pt.String,
		Optional:    true,
		Description: "If you use AWS iGenomes, this has already been set for you appropriately.\n\nPath to known snps file.",
	},
	{
		Name:        "known_snps_tbi",
		Type:        pt.String,
		Optional:    true,
		Description: "Path to known snps file snps.",
	},
	{
		Name:        "save_reference",
		Type:        pt.Boolean,
		Optional:    true,
		Description: "Save built references.",
	},
	{
		Name:        "build_only_index",
		Type:        pt.Boolean,
		Optional:    true,
		Description: "Only built references.",
	},
	{
		Name:        "download_cache",
		Type:        pt.Boolean,
		Optional:    true,
		Description: "Download annotation cache.",
	},
	{
		Name:        "hisat2_build_memory",
		Type:        pt.String,
		Optional:    true,
		Default:     "200.GB",
		Description: "Minimum memory required to use splice sites and exons in the HiSAT2 index build process.",
	},
	{
		Name:        "gtf",
		Type:        pt.String,
		Optional:    true,
		Description: "Path to GTF annotation file.",
	},
	{
		Name:        "gff",
		Type:        pt.String,
		Optional:    true,
		Description: "Path to GFF3 annotation file.",
	},
	{
		Name:        "exon_bed",
		Type:        pt.String,
		Optional:    true,
		Description: "Path to BED file containing exon intervals. This will be created from the GTF file if not specified.",
	},
	{
		Name:         "trim_fastq",
		Type:         pt.Boolean,
		Optional:     true,
		SectionTitle: "FASTQ Preprocessing",
		Description:  "Run FastP for read trimming",
	},
	{
		Name:         "tools",
		Type:         pt.String,
		Optional:     true,
		SectionTitle: "Pipeline stage options",
		Description:  "Tools to use for variant calling and/or for annotation.",
	},
	{
		Name:        "skip_tools",
		Type:        pt.String,
		Optional:    true,
		Description: "Disable specified tools.",
	},
	{
		Name:        "wes",
		Type:        pt.Boolean,
		Optional:    true,
		Description: "Enable when exome or panel data is provided.",
	},
	{
		Name:         "aligner",
		Type:         pt.String,
		Optional:     true,
		Default:      "bwa-mem",
		SectionTitle: "Alignment options",
		Description:  "Specify aligner to be used to map reads to reference genome.",
	},
	{
		Name:        "save_unaligned",
		Type:        pt.Boolean,
		Optional:    true,
		Description: "Where possible, save unaligned reads from aligner to the results directory.",
	},
	{
		Name:        "save_align_intermeds",
		Type:        pt.Boolean,
		Optional:    true,
		Description: "Save the intermediate BAM files from the alignment step.",
	},
	{
		Name:        "bam_csi_index",
		Type:        pt.Boolean,
		Optional:    true,
		Description: "Create a CSI index for BAM files instead of the traditional BAI index. This will be required for genomes with larger chromosome sizes.",
	},
	{
		Name:         "remove_duplicates",
		Type:         pt.Boolean,
		Optional:     true,
		Default:      false,
		SectionTitle: "Variant calling",
	},
	{
		Name:     "no_intervals",
		Type:     pt.Boolean,
		Optional: true,
		Default:  false,
	},
	{
		Name:        "intervals",
		Type:        pt.String,
		Optional:    true,
		Description: "Path to target bed file in case of whole exome or targeted sequencing or intervals file.",
	},
	{
		Name:     "gatk_interval_scatter_count",
		Type:     pt.Integer,
		Optional: true,
		Default:  25,
	},
	{
		Name:        "joint_mutect2",
		Type:        pt.Boolean,
		Optional:    true,
		Description: "Runs Mutect2 in joint (multi-sample) mode for better concordance among variant calls of tumor samples from the same patient. Mutect2 outputs will be stored in a subfolder named with patient ID under `variant_calling/mutect2/` folder. Only a single normal sample per patient is allowed. Tumor-only mode is also supported.",
	},
	{
		Name:         "genesplicer",
		Type:         pt.Boolean,
		Optional:     true,
		SectionTitle: "Annotation",
		Description:  "Enable the use of the VEP genesplicer plugin.",
	},
	{
		Name:        "whitelist",
		Type:        pt.String,
		Optional:    true,
		Description: "Path to BED file with variants to whitelist during filtering",
	},
	{
		Name:        "blacklist",
		Type:        pt.String,
		Optional:    true,
		Description: "Path to BED file with positions to blacklist during filtering (e.g. regions difficult to map)",
	},
	{
		Name:         "email",
		Type:         pt.String,
		Optional:     true,
		SectionTitle: "Generic options",
		Description:  "Email address for completion summary.",
	},
	{
		Name:        "multiqc_title",
		Type:        pt.String,
		Optional:    true,
		Description: "MultiQC report title. Printed as page header, used for filename if not otherwise specified.",
	},
	{
		Name:        "multiqc_methods_description",
		Type:        pt.String,
		Optional:    true,
		Description: "Custom MultiQC yaml file containing HTML including a methods description.",
	},
}

var parameterIndex = func() map[string]int {
	index := make(map[string]int, len(PIPELINE_PARAMETERS))
	for i, p := range PIPELINE_PARAMETERS {
		index[p.Name] = i
	}
	return index
}()

func GetParameter(name string) (models.ParameterSpec, bool) {
	i, ok := parameterIndex[name]
	if !ok {
		return models.ParameterSpec{}, false
	}
	return PIPELINE_PARAMETERS[i], true
}

func IsKnownParameter(name string) bool {
	_, ok := parameterIndex[name]
	return ok
}

func ParameterNames() []string {
	names := make([]string, 0, len(PIPELINE_PARAMETERS))
	for _, p := range PIPELINE_PARAMETERS {
		names = append(names, p.Name)
	}
	return names
}

type Section struct {
	Title      string
	Parameters []models.ParameterSpec
}

// Sections groups the schema the way the UI renders it: a parameter without
// a section title belongs to the closest titled parameter above it.
func Sections() []Section {
	sections := []Section{}
	for _, p := range PIPELINE_PARAMETERS {
		if p.SectionTitle != "" || len(sections) == 0 {
			sections = append(sections, Section{Title: p.SectionTitle})
		}
		last := &sections[len(sections)-1]
		last.Parameters = append(last.Parameters, p)
	}
	return sections
}

// SectionOf returns the section title a parameter is rendered under.
func SectionOf(name string) string {
	title := ""
	for _, p := range PIPELINE_PARAMETERS {
		if p.SectionTitle != "" {
			title = p.SectionTitle
		}
		if p.Name == name {
			return title
		}
	}
	return ""
}
