// Package wda drives an iOS application through a WebDriverAgent server.
package wda
