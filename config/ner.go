package config

import (
	"sync"
)

var (
	nerOnce   sync.Once
	nerConfig *NERConfig
)

// NERConfig describes the optional named-entity model service. An empty
// Endpoint means the capability is absent and the regex recognizer carries
// the whole behavior.
type NERConfig struct {
	Endpoint string
	Model    string
}

// Available reports whether the model capability is configured. Decided once
// at startup, never per call.
func (c *NERConfig) Available() bool {
	return c.Endpoint != ""
}

func GetNERConfig() *NERConfig {
	nerOnce.Do(func() {
		loadEnv()

		nerConfig = &NERConfig{
			Endpoint: getenv("NER_ENDPOINT", ""),
			Model:    getenv("NER_MODEL", "en_core_web_sm"),
		}
	})
	return nerConfig
}
