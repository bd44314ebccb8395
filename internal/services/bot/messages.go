package bot

// User-visible strings. Handler boundaries reduce every failure to one of
// the generic replies below; details stay in the logs.
const (
	msgGreeting = "👋 *Welcome!*\n\n" +
		"Send me a YouTube link 🎥\n" +
		"I'll offer *video & MP3 download options*.\n\n" +
		"_Fast • Simple • Free_"

	msgInvalidLink  = "❌ Please send a valid YouTube link."
	msgFetchFailed  = "❌ Couldn't fetch video info."
	msgStarting     = "⏬ Starting download..."
	msgDownloadErr  = "❌ Download error."
	msgFileTooLarge = "⚠️ File is too large to upload to Telegram. Try a lower quality."
	msgComplete     = "✅ Download complete!"
)
