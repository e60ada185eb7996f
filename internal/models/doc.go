// Package models defines domain entities shared across the clipforge CLI and editor.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): Lightweight structs representing backend data
//   - [Video] : Channel video metadata from the TubeGrow API
//   - [ClipCandidate] : AI-suggested clip window with score and summary
//   - [RenderRequest] : Trimmed range submitted for rendering
//
// 2. Persistent Entities: Database-backed records with lifecycle tracking
//   - [RenderJob] : Render operations tracking status, output, and errors
//
// [AspectRatio] and [JobStatus] are closed string enumerations; both the API
// layer and the local repositories validate against them on the way in.
package models
