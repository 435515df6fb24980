package config

import "fmt"

// Environment is the deployment a service runs in
type Environment string

const (
	EnvProd   Environment = "prod"
	EnvDev    Environment = "dev"
	EnvLocal  Environment = "local"
	EnvDocker Environment = "docker"
)

var baseURLs = map[Environment]string{
	EnvProd:   "https://api.crypticorn.com",
	EnvDev:    "https://api.crypticorn.dev",
	EnvLocal:  "http://localhost",
	EnvDocker: "http://host.docker.internal",
}

// ParseEnvironment validates an environment name
func ParseEnvironment(s string) (Environment, error) {
	env := Environment(s)
	if _, ok := baseURLs[env]; !ok {
		return "", fmt.Errorf("invalid environment: %s", s)
	}
	return env, nil
}

// BaseURL returns the API base URL of the environment
func (e Environment) BaseURL() (string, error) {
	url, ok := baseURLs[e]
	if !ok {
		return "", fmt.Errorf("invalid environment: %s", e)
	}
	return url, nil
}

// BaseURLFromEnv maps an environment name to its API base URL
func BaseURLFromEnv(s string) (string, error) {
	env, err := ParseEnvironment(s)
	if err != nil {
		return "", err
	}
	return env.BaseURL()
}
