/*
Package ocr extracts the card name printed at the bottom of each drop segment.

An Engine opens one Session per drop; the Extractor runs every segment through that session,
restricting recognition to the bottom strip of the segment, and closes it when the batch is done.
A segment that cannot be read leaves an absent Text in its slot instead of failing the batch.
*/
package ocr
