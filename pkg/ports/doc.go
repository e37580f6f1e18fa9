/*
Package ports defines the interfaces that decouple mdrender's core from its
collaborators.

# Key Interfaces

  - HostConfig: the callback contract a reconciler drives to realize its
    computed changes against a concrete target (the markdown host implements
    it over the document tree).
  - Renderer: the one-shot description-to-markdown entry point used by the
    HTTP and MCP adapters.
  - DescriptionLoader: resolves named descriptions (YAML files, Loam documents).
  - RenderCache: stores rendered markdown keyed by description hash.
*/
package ports
