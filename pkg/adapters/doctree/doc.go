/*
Package doctree implements the reconciler host contract over the document tree.

A Host is created per render. The reconciler calls it synchronously during its
commit; the host turns each callback into a domain.Element or domain.Text
operation and, when the commit ends, records the container as the render's
result and flips its completion flag. That flag is the single signal the render
driver trusts before serializing.

Only the mutation subset has behavior. Hydration, persistence, scopes and
focus hooks are inert: they exist because the contract requires them, and the
ones a reconciler should never reach for this host log a warning.
*/
package doctree
