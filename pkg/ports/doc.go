/*
Package ports defines the driven ports (interfaces) for the flow engine.

These interfaces decouple the core from external implementations, so the
same store logic works against memory, the filesystem or Redis.

# Key Interfaces

  - GraphStore: persists and loads named graph documents.
*/
package ports
