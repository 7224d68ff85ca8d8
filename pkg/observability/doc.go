/*
Package observability turns navigator lifecycle events and suite outcomes into
structured logs and Prometheus metrics.
*/
package observability
