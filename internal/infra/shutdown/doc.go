// Package shutdown provides graceful shutdown for long-running processes.
//
// A Handler waits for SIGINT, SIGTERM, an explicit Trigger or context
// cancellation, then runs registered hooks in reverse order under a
// deadline:
//
//	h := shutdown.NewHandler(10 * time.Second)
//	h.OnShutdown(srv.Shutdown)
//	err := h.WaitContext(ctx)
package shutdown
