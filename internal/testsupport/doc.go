// Package testsupport holds helpers shared by upnext tests: isolated home
// directories, episode fixtures and a stub player executable.
package testsupport
