package config

import "flag"

// FlagOverrides maps command-line flag names to the environment keys they shadow
var FlagOverrides = map[string]string{
	"seed":      EnvSeed,
	"score":     EnvScore,
	"inventory": EnvInventory,
	"audio":     EnvAudioEnabled,
	"volume":    EnvMasterVolume,
	"listen":    EnvListen,
	"debug":     EnvDebug,
}

// FlagLookup exposes the explicitly set flags of fs through the ApplyEnv lookup signature
// Flags left at their defaults do not override file or environment values
func FlagLookup(fs *flag.FlagSet) func(string) (string, bool) {
	set := make(map[string]string)
	fs.Visit(func(f *flag.Flag) {
		if env, ok := FlagOverrides[f.Name]; ok {
			set[env] = f.Value.String()
		}
	})
	return func(key string) (string, bool) {
		v, ok := set[key]
		return v, ok
	}
}
