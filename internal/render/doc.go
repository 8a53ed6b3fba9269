// Package render converts Markdown documents into standalone HTML pages with
// client-side diagram rendering.
//
// Conversion is delegated to a DocumentRenderer. PandocRenderer shells out to
// the pandoc binary; GoldmarkRenderer converts in-process. Every produced page
// then goes through two whole-file passes: InjectScript adds the mermaid
// bootstrap before </body> and CleanDiagramTags unwraps the <code> element
// inside <pre class="mermaid"> so the diagram source is read verbatim.
package render
