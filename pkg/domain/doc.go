/*
Package domain contains the document tree that a render builds and serializes.

It is kept pure and free of I/O, following the same hexagonal split as the rest
of the module: adapters mutate the tree, the markdown package reads it.

# Key Entities

  - Element: one document element (tag, props, ordered children).
  - Text: a literal text leaf.
  - Container: the root Element (tag "root") a render commits into.
  - TagKind: the closed set of tags the serializer knows, plus KindUnknown.
  - LifecycleHooks: observability callbacks fired by the render driver.
*/
package domain
