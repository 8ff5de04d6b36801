/*
Package ports defines the driven ports (interfaces) for the Overlay site.

These interfaces decouple page rendering from external implementations, allowing
the site to work with various content sources and output caches.

# Key Interfaces

  - PageLoader: Responsible for loading Page definitions (e.g., from Loam or Memory).
  - Watchable: Optional loader capability signalling content changes.
  - PageCache: Stores rendered output (e.g., in Memory or Redis).
*/
package ports
