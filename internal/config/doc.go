// Package config locates the upnext document and decodes the tool settings
// stored next to the series list.
//
// Location resolution is a pure function of a Locator so it can be tested
// without touching the environment; LocatorFromEnv is the only place that
// reads UPNEXT_TOML_PATH and the home directory. Settings ([player],
// [playback], [logging]) are decoded from the same TOML document, filled
// with defaults, normalized and validated so callers never see raw values.
package config
