package config

import (
	"os"

	"modelmux/internal/dispatch"
)

type Config struct {
	Port            string
	OwnerID         string
	DefaultOption   dispatch.Option
	DeepInfraURL    string
	DeepInfraAPIKey string
	GPT4FreeBaseURL string
	ImageBaseURL    string
}

func FromEnv() Config {
	c := Config{}
	c.Port = getenv("PORT", "8080")
	c.OwnerID = os.Getenv("OWNER_ID")
	c.DefaultOption = dispatch.OptionDeepInfra
	if getenv("DEFAULT_OPTION", "1") == "2" {
		c.DefaultOption = dispatch.OptionGPT4Free
	}
	c.DeepInfraURL = os.Getenv("DEEPINFRA_URL")
	c.DeepInfraAPIKey = os.Getenv("DEEPINFRA_API_KEY")
	c.GPT4FreeBaseURL = getenv("GPT4FREE_BASE_URL", "http://localhost:1337")
	c.ImageBaseURL = getenv("IMAGE_BASE_URL", "https://api.codeltix.com")
	return c
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
