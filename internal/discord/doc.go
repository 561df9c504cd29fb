// Package discord provides a sarah.Adapter implementation for Discord.
//
// This package bridges go-sarah's bot framework with Discord using discordgo
// for the underlying API integration. Message events are converted into *Input,
// application command interactions into *SlashInput, and sarah.Output is
// dispatched as channel messages, threaded replies or interaction responses
// depending on its destination.
package discord
