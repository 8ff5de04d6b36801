/*
Package observability provides Prometheus instrumentation for Overlay.

Metrics records renders, component-map resolutions (fresh versus reused from a
node's memo) and cache lookups. Create it against any prometheus.Registerer and
expose the registry through promhttp.
*/
package observability
