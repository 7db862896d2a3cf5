// Package deps checks that the external programs upnext launches can be
// found on PATH.
package deps
