// Package logging provides structured logging for savekeep using slog.
//
// Text output goes through [Handler], which colors levels and keys when
// writing to a terminal and shortens paths under the home directory to
// "~". JSON output uses the standard library handler. A second writer,
// typically a log file, can be attached with Config.Tee; it always
// receives JSON.
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//		Level:  logging.LevelFromVerbosity(verbose),
//		Format: logging.FormatText,
//		Output: os.Stderr,
//	})
//	ctx = logging.NewContext(ctx, logger)
//
// Commands retrieve it again with [FromContext].
//
// # Testing
//
// For tests, use [ForTest] to capture log output via the testing framework:
//
//	store := backup.NewStore(dir, backup.WithLogger(logging.ForTest(t)))
package logging
