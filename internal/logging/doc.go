// Package logging provides structured logging for marquee.
//
// This package wraps a package-global zap logger with convenience functions
// and a few navigation-specific helpers. Logging is silent unless a level is
// configured, because the terminal front-end owns the screen.
//
// # Log Levels
//
//   - Debug: State transitions, attract signals, tick timing
//   - Info: Launches, collection changes, remote clients
//   - Warn: Resolution fallbacks, launch failures
//   - Error: Startup failures
//
// # Configuration
//
//	if err := logging.InitializeWithOptions(logging.Options{
//	    Level: "debug",
//	    File:  "/tmp/marquee.log",
//	}); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// MARQUEE_LOG_LEVEL and MARQUEE_LOG_FILE are consulted when the options leave
// the fields empty.
//
// # Specialized Logging
//
//	logging.LogTransition("Idle", "HighlightRequest", "key:down")
//	logging.LogLaunch("arcade", "pacman", false, played, false, nil)
//	logging.LogResolution("missing", err)
//
// Components constructed with an explicit *zap.Logger (the launcher, the
// remote server) should be passed logging.Named("component").
package logging
