// Package logger provides leveled logging for edtoken commands.
//
// The logger supports multiple verbosity levels controlled by command-line
// flags. Prefixes are colored with fatih/color.
//
// # Verbosity Levels
//
//   - --verbose: Shows info and warning messages
//   - --debug: Shows all messages including debug details and errors
//
// Without flags, only WarnfAlways and WarnfUser output is shown. Command
// failures themselves are reported by the cmd layer, not through the logger.
//
// # Log Methods
//
//	Logger.Infof()           // Shown with --verbose or --debug
//	Logger.Debugf()          // Shown only with --debug
//	Logger.Warnf()           // Shown with --verbose or --debug
//	Logger.WarnfAlways()     // Always shown
//	Logger.WarnfUser()       // Always shown, user-facing wording
//	Logger.Errorf()          // Shown with --debug
//	Logger.ErrorfAndReturn() // Errorf, then returns the message as an error
//
// Never pass a passphrase or a decrypted token to any of these.
//
// # Usage
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Loaded %d profiles", count)
//
// Commands create a logger in their PersistentPreRun and pass it to the
// workflows.
package logger
