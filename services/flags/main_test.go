package flags

import (
	"testing"

	"github.com/latchbio-nfcore/rnadnavar/models"
	"github.com/stretchr/testify/assert"
)

func TestFlag(t *testing.T) {
	assert.Equal(t, []string{"--trim_fastq"}, Flag("trim_fastq", models.Bool(true)))
	assert.Empty(t, Flag("trim_fastq", models.Bool(false)))
	assert.Empty(t, Flag("intervals", models.Absent()))
	assert.Equal(t, []string{"--genome", "GRCh38"}, Flag("genome", models.Scalar("GRCh38")))

	// an empty string is still a present value
	assert.Equal(t, []string{"--email", ""}, Flag("email", models.Scalar("")))
}

func TestTranslateMixedValues(t *testing.T) {
	params := models.ResolvedParameters{
		"trim_fastq": models.Bool(true),
		"genome":     models.Scalar("GRCh38"),
		"intervals":  models.Absent(),
	}

	// schema order, not map order
	assert.Equal(t, []string{"--genome", "GRCh38", "--trim_fastq"}, Translate(params))
}

func TestTranslateIsDeterministic(t *testing.T) {
	params := models.ResolvedParameters{
		"input":       models.Scalar("latch:///samplesheet.csv"),
		"outdir":      models.Scalar("latch:///results"),
		"read_length": models.Scalar("76.0"),
		"wes":         models.Bool(true),
		"tools":       models.Scalar("mutect2,strelka"),
		"save_mapped": models.Bool(false),
	}

	first := Translate(params)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Translate(params))
	}
	assert.Equal(t, []string{
		"--input", "latch:///samplesheet.csv",
		"--outdir", "latch:///results",
		"--read_length", "76.0",
		"--tools", "mutect2,strelka",
		"--wes",
	}, first)
}

func TestTranslateSkipsUnknownNames(t *testing.T) {
	params := models.ResolvedParameters{
		"not_a_parameter": models.Scalar("x"),
		"wes":             models.Bool(true),
	}
	assert.Equal(t, []string{"--wes"}, Translate(params))
}

func TestTranslateEmpty(t *testing.T) {
	assert.Equal(t, []string{}, Translate(models.ResolvedParameters{}))
	assert.Equal(t, []string{}, Translate(nil))
}
