// internal/auth/auth.go
package auth

import (
	"os"
	"strings"

	"github.com/joho/godotenv"

	custom_errors "repo-miner/internal/errors"
)

// TokenKey is the variable name the providers look up, both in dotenv files
// and in the process environment.
const TokenKey = "GITHUB_TOKEN"

// Provider supplies an access token from one credential source.
type Provider interface {
	// Name identifies the provider in error messages.
	Name() string
	// Token returns the token and true when the source holds a usable value.
	Token() (string, bool)
}

// DotenvProvider reads the token from a dotenv-style file.
type DotenvProvider struct {
	Path string
}

func (p DotenvProvider) Name() string {
	return "dotenv:" + p.Path
}

func (p DotenvProvider) Token() (string, bool) {
	env, err := godotenv.Read(p.Path)
	if err != nil {
		return "", false
	}
	token := strings.TrimSpace(env[TokenKey])
	return token, token != ""
}

// EnvProvider reads the token from a process environment variable.
type EnvProvider struct {
	Var string
}

func (p EnvProvider) Name() string {
	return "env:" + p.Var
}

func (p EnvProvider) Token() (string, bool) {
	token := strings.TrimSpace(os.Getenv(p.Var))
	return token, token != ""
}

// Resolve tries each provider in order and returns the first token found.
// Exhausting the chain is a hard failure, not a soft-degrade.
func Resolve(providers ...Provider) (string, error) {
	tried := make([]string, 0, len(providers))
	for _, p := range providers {
		if token, ok := p.Token(); ok {
			return token, nil
		}
		tried = append(tried, p.Name())
	}
	return "", &custom_errors.AuthenticationError{Tried: tried}
}
