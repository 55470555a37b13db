// Package render draws sessions onto a tcell screen.
//
// View is a highlight.Presenter: the overlay hands it the spans of a
// document and Draw paints the content with the theme's style for each
// span. Text is walked by grapheme cluster so combining sequences and wide
// characters take the right number of cells.
package render
