// Package textutil provides file-name sanitization for generated artifacts.
//
// Names derived from user media often carry spaces, brackets and other
// characters that trip up ffmpeg or media players. CleanFileName reduces them
// to a conservative alphanumeric-and-underscore form, optionally with a short
// random suffix so repeated runs do not overwrite each other.
package textutil
