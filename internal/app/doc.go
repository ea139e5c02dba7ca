// Package app is the composition root of flowdeck.
//
// # Overview
//
// Open turns command line options into a Session: it loads the TOML config,
// opens the log destination, resolves the bearer token and builds the
// flowapi client. Run adds the pieces the dashboard needs and blocks in the
// Bubble Tea program until the user quits or the context is cancelled.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Open()     │ Shared startup
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()         Read ~/.config/flowdeck/config.toml
//	       ├─────> openLogOutput()       Log file, or stderr for "-"
//	       ├─────> NewLogger()           slog text or JSON handler
//	       ├─────> token.Resolve()       --token, FLOWDECK_TOKEN, token_file
//	       ├─────> token.Prompt()        Only when interactive and nothing found
//	       └─────> flowapi.NewClient()   Bearer token client
//
//	┌──────────────┐
//	│   Run()      │ Dashboard
//	└──────┬───────┘
//	       ├─────> prefs.Open().Load()   Theme
//	       ├─────> state.NewLoader()     One in-flight refresh per resource
//	       ├─────> alerts.New()          Alert queue, warnings logged
//	       └─────> ui.Run()              Start TUI (blocks)
//
// ListFlows and WriteListing back the non-interactive "flows list" command;
// they apply search, filters, sort and paging through the same grid rules
// as the dashboard. RenameFlow, GetRun and WriteRecord back "flows rename"
// and "flows run".
//
// # Error Handling
//
// Fatal errors are returned from Open and Run: an unreadable or invalid
// config, an unwritable log file, no token (or a failed prompt), and a bad
// API base URL. Once the dashboard is running, failures become alerts.
package app
