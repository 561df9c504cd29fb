/*
Package pipeline turns the image attached to a drop into the text printed on each of its cards.

A Run works inside its own Workspace: the attachment is fetched, converted to PNG, cut into
equal-width vertical segments, and each segment is handed to the text extractor.
The workspace is removed when the Run ends.
*/
package pipeline
