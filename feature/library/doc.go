// Package library finds the games installed on this machine by reading Steam's
// own bookkeeping files.
//
// libraryfolders.vdf in the configured steamapps directory lists every library
// folder. Each library's steamapps directory holds one appmanifest_<appid>.acf
// per installed app, whose AppState block carries the appid, the name and
// SizeOnDisk (bytes, encoded as a string). Both files use Valve's KeyValues
// (VDF) text format, parsed with github.com/andygrunwald/vdf.
//
// A library folder that no longer exists (e.g. an unplugged drive) is reported
// as Missing and skipped. A manifest that cannot be parsed is skipped and
// counted. Only a missing or unreadable libraryfolders.vdf is fatal.
package library
