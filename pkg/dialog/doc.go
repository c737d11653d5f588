// Package dialog correlates API requests with platform dialogs.
//
// Middleware reads X-Dialog-ID (or mints a UUID), stores it on the request
// context and echoes it back. LoggerExtractor plugs into
// logger.WithContextExtractors so every record logged with that context
// carries dialog_id, and Params copies the id into a unit Input Context.
package dialog
