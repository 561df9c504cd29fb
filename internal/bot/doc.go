/*
Package bot defines the commands the Discord bot runs.

A drop posted by the configured drop bot is read through the pipeline and every user whose
watch-list names a card is mentioned in a reply to the drop. The register-series,
unregister-series and get-series slash commands manage the watch-lists.
*/
package bot
