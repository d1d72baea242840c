package main

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// envPrefix namespaces environment overrides: --log-level reads TALLY_LOG_LEVEL.
	envPrefix = "tally"

	// wrapWidth is the column at which flag help text is wrapped.
	wrapWidth = 50
)

// newConfig returns a viper instance that reads TALLY_* variables, after
// loading .env.local and then .env. godotenv never overrides a variable that
// is already set, so the real environment beats .env.local, which beats .env.
func newConfig() *viper.Viper {
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	cfg := viper.New()
	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	cfg.AutomaticEnv()

	return cfg
}

// wrap breaks help text into lines of at most wrapWidth characters.
func wrap(text string) string {
	var (
		lines   []string
		current strings.Builder
	)

	for _, word := range strings.Fields(text) {
		if current.Len() > 0 && current.Len()+1+len(word) > wrapWidth {
			lines = append(lines, current.String())
			current.Reset()
		}

		if current.Len() > 0 {
			current.WriteByte(' ')
		}

		current.WriteString(word)
	}

	if current.Len() > 0 {
		lines = append(lines, current.String())
	}

	return strings.Join(lines, "\n")
}
