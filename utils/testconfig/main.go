package testconfig

import (
	"fmt"
	"os"
	"path"
	"runtime"

	"github.com/latchbio-nfcore/rnadnavar/models"
	yaml "gopkg.in/yaml.v2"
)

// InitConfig loads the shared test configuration. Each call returns a fresh
// copy so tests may mutate it freely.
func InitConfig() *models.Config {
	var cfg models.Config

	// get this file's path
	_, filename, _, _ := runtime.Caller(0)
	folderpath := path.Dir(filename)

	// retrieve the neighbouring test.config
	f, err := os.Open(fmt.Sprintf("%s/test.config.yml", folderpath))
	if err != nil {
		processError(err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	err = decoder.Decode(&cfg)
	if err != nil {
		processError(err)
	}

	return &cfg
}

func processError(err error) {
	fmt.Println(err)
	os.Exit(2)
}
