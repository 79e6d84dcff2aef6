// Package logger builds *slog.Logger values with a consistent setup and
// provides attribute helpers so keys stay uniform across packages.
//
// New picks a text or JSON handler, applies static attributes and wraps the
// handler in LogHandlerDecorator, which runs registered ContextExtractor
// functions on every record:
//
//	log := logger.New(
//	    logger.WithDevelopment("billing"),
//	    logger.WithContextExtractors(rbac.LogRole),
//	)
//	log.InfoContext(ctx, "role resolved",
//	    logger.Action("read"),
//	    logger.Subject("invoice"),
//	)
//
// Error and Errors return an empty attribute for nil errors, so they can be
// passed unconditionally.
package logger
