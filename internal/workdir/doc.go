// Package workdir manages the per-media directories the transcribe command
// leaves under paths.work_dir: extracted WAV audio and raw WhisperX JSON.
//
// Directories older than paths.work_retention_hours are removed at the start
// of each transcription; `captioner work clean` removes them on demand.
package workdir
