package catalog

// DefaultPosts returns the built-in demo catalog.
func DefaultPosts() []Post {
	return []Post{
		{
			ID:           "1",
			ImageRef:     "https://images.stockcake.com/public/1/7/e/17e3d856-fa51-4727-99d2-1a292ec89765_large/futuristic-technology-portrait-stockcake.jpg",
			Username:     "techguru",
			Caption:      "Amazing new tech trends! 🚀 #technology #innovation",
			LikeCount:    1234,
			CommentCount: 89,
		},
		{
			ID:           "2",
			ImageRef:     "https://images.stockcake.com/public/9/6/7/967020b9-0db9-41b5-96f3-6024d93bbc41_large/silhouetted-tree-arch-stockcake.jpg",
			Username:     "wanderlust",
			Caption:      "Beautiful sunset from my travels ✈️ #travel #sunset",
			LikeCount:    2156,
			CommentCount: 156,
		},
		{
			ID:           "3",
			ImageRef:     "https://images.stockcake.com/public/5/c/6/5c651eb1-e870-4f5f-9f00-b22c35b73ef5_large/nature-human-connection-stockcake.jpg",
			Username:     "foodie_life",
			Caption:      "Delicious homemade pasta 🍝 #food #cooking",
			LikeCount:    987,
			CommentCount: 67,
		},
		{
			ID:           "4",
			ImageRef:     "https://images.stockcake.com/public/d/e/d/ded45393-e812-49a1-a9bc-1535828864a4_large/futuristic-facial-recognition-stockcake.jpg",
			Username:     "fitnessmotiv",
			Caption:      "Morning workout complete! 💪 #fitness #motivation",
			LikeCount:    1876,
			CommentCount: 234,
		},
	}
}

// DefaultComments returns the comments already present under every post.
// Ids are assigned by the store when it is built.
func DefaultComments() []Comment {
	return []Comment{
		{Username: "user123", Text: "Amazing post! Love it 😍", AvatarRef: PlaceholderAvatar, Timestamp: "2h"},
		{Username: "follower456", Text: "This is so inspiring!", AvatarRef: PlaceholderAvatar, Timestamp: "1h"},
	}
}

// DefaultGreetings returns the two opening DM lines sent by the automation.
func DefaultGreetings() []string {
	return []string{
		"Hey there! I'm so happy you're here, thanks so much for your interest 😊",
		"Click below and I'll send you the link in just a sec ✨",
	}
}

// OpeningButtonLabel is the call-to-action attached to the opening DM.
const OpeningButtonLabel = "Send me the link"
