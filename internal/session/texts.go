package session

// Chat reply texts, matching the bot's original voice.

const (
	welcomeText = `🎬 Welcome to Instagram Reels Bot!

Hi %s! I can help you post videos as Instagram Reels.

📋 Available Commands:
/connect - Connect your Instagram account
/status - Check connection status
/disconnect - Disconnect Instagram account
/help - Show this help message

🎥 To post a reel:
1. First, connect your Instagram account with /connect
2. Send me a video file
3. Use /post command to start posting process

Let's get started! Use /connect to link your Instagram account.`

	helpText = `🤖 Instagram Reels Bot Help

📋 Commands:
/start - Welcome message and setup
/connect - Connect your Instagram account
/status - Check connection status
/disconnect - Disconnect Instagram account
/post - Start posting process (after sending video)
/help - Show this help message

📱 How to post a reel:
1️⃣ Connect Instagram account: /connect
2️⃣ Send a video file (3-90 seconds)
3️⃣ Use /post command
4️⃣ Enter your caption
5️⃣ Confirm and post!

⚠️ Requirements:
- Video must be 3-90 seconds long
- MP4 format recommended
- File size under 100MB`

	connectPromptText = "🔗 Click the button below to connect your Instagram account:\n\n" +
		"⚠️ You'll be redirected to Instagram to authorize this app.\n" +
		"After authorization, you'll receive a confirmation message here."

	alreadyConnectedText = "✅ You're already connected to Instagram as @%s\n" +
		"Use /disconnect if you want to connect a different account."

	connectedText = "✅ Successfully connected to Instagram as @%s!\n" +
		"You can now send videos and use /post to share them as reels!"

	connectFailedText = "❌ Failed to connect your Instagram account: %s\n" +
		"Please try /connect again."

	notStartedText = "❌ You haven't started using the bot yet. Use /start first."

	notConnectedText = "❌ Please connect your Instagram account first using /connect"

	statusConnectedText = "✅ Connected to Instagram\n" +
		"📱 Account: @%s\n" +
		"🔗 Last used: %s\n" +
		"📊 Reels posted: %d"
	statusLastReelText = "\n🎬 Latest reel: %s"
	statusFooterText   = "\n\nYou can now send videos and use /post to share them as reels!"

	statusDisconnectedText = "❌ Not connected to Instagram\nUse /connect to link your Instagram account."

	disconnectConfirmText  = "⚠️ Are you sure you want to disconnect from @%s?"
	disconnectedText       = "✅ Successfully disconnected from Instagram."
	disconnectCancelText   = "❌ Disconnection cancelled."
	noAccountToDisconnect  = "❌ You're not connected to any Instagram account."

	videoReceivedText    = "📹 Video received! Now use /post to start posting process."
	videoOutOfRangeText  = "❌ Video duration must be between 3-90 seconds.\nYour video is %d seconds long."
	noVideoText          = "❌ Please send a video file first, then use /post"
	missingDataText      = "❌ Missing required data. Please try again."

	captionPromptText = "✍️ Please send the caption for your reel:\n\n" +
		"💡 Tips:\n" +
		"- Use relevant hashtags\n" +
		"- Keep it engaging\n" +
		"- Mention other accounts with @username"

	confirmPreviewText = "📋 Ready to post!\n\n📝 Caption:\n%s"
	publishingText     = "🔄 Uploading your reel to Instagram..."
	postCancelledText  = "❌ Post cancelled."

	publishSuccessText = "🎉 Successfully posted your reel!\n\n" +
		"📱 Check your Instagram: @%s\n" +
		"🆔 Media ID: %s"

	publishContainerFailedText = "❌ Failed to prepare your video for Instagram.\nPlease try again later or contact support."
	publishTimeoutText         = "❌ Instagram took too long to process your video.\nPlease try again later."
	publishFailedText          = "❌ Failed to post reel.\nPlease try again later or contact support."
)
