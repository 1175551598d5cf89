// Package main hosts the captioner CLI entrypoint and command graph.
//
// The Cobra command tree loads configuration once, builds the structured
// logger, and hands off to the internal packages: transcript loading and
// repair, segmentation, artifact writing, WhisperX transcription and the run
// history. Keep this package lean: add behaviour to the internal packages
// first, then surface it through a command or flag here.
package main
