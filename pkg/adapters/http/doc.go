/*
Package http serves a read-only dashboard for a running controller.

Routes:

  - GET /healthz    liveness probe
  - GET /state      current run context and configuration (JSON)
  - GET /telemetry  latest telemetry snapshot (JSON)
  - GET /graph      Mermaid transition graph with the current state highlighted
  - GET /events     server-sent state transitions
  - GET /metrics    Prometheus exposition

Nothing here can command the robot.
*/
package http
