// Package app is the composition root for Skipper.
//
// Run loads the .env file, the TOML config and the preferences, applies
// flag overrides, builds the skips client and the session logger, and
// hands a loader to the UI. The loader is the only thing that talks to
// the network. The UI calls it once per picker instance:
//
//	Run()
//	 ├─> config.LoadDotEnv() / config.Load()
//	 ├─> prefs.Load()
//	 ├─> skips.NewClient()
//	 ├─> newLogger()          TUI status line, optional JSON file
//	 └─> ui.Run()             blocks until quit
//	      └─> loader.Load()   one request; retries only when configured
//
// Retries apply to transport failures and 5xx responses, waiting
// calculateBackoff between attempts (doubling, capped at 30s).
package app
