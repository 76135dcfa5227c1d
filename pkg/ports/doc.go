/*
Package ports defines the contracts between the Weave builder core and its collaborators.

These interfaces decouple the content model from concrete encoders, culture
providers, and caches, so the core can be embedded with any markup target or
runtime environment.

# Key Interfaces

  - Content: Anything that can write itself into a sink given an Encoder.
  - Encoder: A pure transformation making arbitrary text safe for the target markup.
  - FormatProvider: A culture/locale context consulted during composite formatting.
  - RenderCache: Optional storage for rendered output (used by the preview server).
*/
package ports
