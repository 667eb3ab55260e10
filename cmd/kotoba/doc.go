// Command kotoba builds a searchable corpus from video subtitle tracks.
//
// Typical usage:
//
//	kotoba ingest dQw4w9WgXcQ https://youtu.be/oHg5SJYRHA0
//	kotoba search 勉強
//	kotoba stats
//	kotoba export 勉強 --output matches.csv
package main
