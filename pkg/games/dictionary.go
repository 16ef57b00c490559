package games

var builtin = []Game{
	// casual
	{Name: "Truth or Dare", Category: Casual, MinTier: Acquaintance},
	{Name: "20 Questions", Category: Casual, MinTier: Acquaintance},
	{Name: "Would You Rather", Category: Casual, MinTier: Acquaintance},
	{Name: "Two Truths and a Lie", Category: Casual, MinTier: Acquaintance},
	{Name: "Never Have I Ever", Category: Casual, MinTier: Friend},
	{Name: "Who's Most Likely To", Category: Casual, MinTier: Friend},
	{Name: "Finish the Sentence", Category: Casual, MinTier: Acquaintance},
	{Name: "Word Association", Category: Casual, MinTier: Acquaintance},
	{Name: "Hangman", Category: Casual, MinTier: Acquaintance},
	{Name: "Charades by Text", Category: Casual, MinTier: Acquaintance},
	{Name: "Guess the Character", Category: Casual, MinTier: Acquaintance},
	{Name: "Desert Island Picks", Category: Casual, MinTier: Acquaintance},
	{Name: "Top 5 Rankings", Category: Casual, MinTier: Acquaintance},
	{Name: "Moral Dilemmas", Category: Casual, MinTier: Friend},
	{Name: "Invent a Hybrid Animal", Category: Casual, MinTier: Acquaintance},

	// trivia
	{Name: "Movie Trivia", Category: Trivia, MinTier: Acquaintance},
	{Name: "Music Trivia", Category: Trivia, MinTier: Acquaintance},
	{Name: "Guess the Song from the Lyrics", Category: Trivia, MinTier: Acquaintance},
	{Name: "Geography Quiz", Category: Trivia, MinTier: Acquaintance},
	{Name: "Anime Trivia", Category: Trivia, MinTier: Acquaintance},
	{Name: "Guess the Year", Category: Trivia, MinTier: Acquaintance},
	{Name: "Emoji Movie Titles", Category: Trivia, MinTier: Acquaintance},
	{Name: "How Well Do You Know Me", Category: Trivia, MinTier: Friend},

	// creative
	{Name: "Collaborative Story", Category: Creative, MinTier: Acquaintance},
	{Name: "Improvised Roleplay Scene", Category: Creative, MinTier: Friend},
	{Name: "Design a Dream House", Category: Creative, MinTier: Friend},
	{Name: "Invent a Superpower", Category: Creative, MinTier: Acquaintance},
	{Name: "Write a Silly Song", Category: Creative, MinTier: Friend},
	{Name: "Plan an Imaginary Trip", Category: Creative, MinTier: Friend},
	{Name: "Create a Fantasy World", Category: Creative, MinTier: Friend},
	{Name: "Describe a Perfect Day", Category: Creative, MinTier: CloseFriend},

	// spicy (flirty but not explicit)
	{Name: "Flirty Would You Rather", Category: Spicy, MinTier: CloseFriend},
	{Name: "Spicy Truth or Dare", Category: Spicy, MinTier: CloseFriend},
	{Name: "Compliment Battle", Category: Spicy, MinTier: CloseFriend},
	{Name: "Describe Our Ideal Date", Category: Spicy, MinTier: CloseFriend},
	{Name: "Pickup Line Contest", Category: Spicy, MinTier: CloseFriend},
	{Name: "Kiss, Marry, Avoid", Category: Spicy, MinTier: CloseFriend},
	{Name: "Rate the Flirt", Category: Spicy, MinTier: Intimate},

	// sexual (adult sessions only)
	{Name: "Explicit Truth or Dare", Category: Sexual, AdultOnly: true, MinTier: CloseFriend},
	{Name: "Fantasy Sharing", Category: Sexual, AdultOnly: true, MinTier: Intimate},
	{Name: "Adult Never Have I Ever", Category: Sexual, AdultOnly: true, MinTier: CloseFriend},
	{Name: "Steamy Story Building", Category: Sexual, AdultOnly: true, MinTier: Intimate},
	{Name: "Turn-On Twenty Questions", Category: Sexual, AdultOnly: true, MinTier: Intimate},
	{Name: "Describe Your Wildest Night", Category: Sexual, AdultOnly: true, MinTier: Intimate},

	// conversation
	{Name: "36 Questions to Fall in Love", Category: Conversation, MinTier: CloseFriend},
	{Name: "This or That", Category: Conversation, MinTier: Acquaintance},
	{Name: "Hot Takes", Category: Conversation, MinTier: Acquaintance},
	{Name: "Childhood Memories", Category: Conversation, MinTier: Friend},
	{Name: "Bucket List Swap", Category: Conversation, MinTier: Friend},
	{Name: "Unpopular Opinions", Category: Conversation, MinTier: Acquaintance},
	{Name: "Deep Questions at Midnight", Category: Conversation, MinTier: CloseFriend},
	{Name: "Recommend Me Something", Category: Conversation, MinTier: Acquaintance},

	// challenge
	{Name: "Only Emojis Challenge", Category: Challenge, MinTier: Friend},
	{Name: "Talk Like a Pirate", Category: Challenge, MinTier: Friend},
	{Name: "Rhymes Only", Category: Challenge, MinTier: Friend},
	{Name: "No Letter E", Category: Challenge, MinTier: Friend},
	{Name: "Playlist Swap Challenge", Category: Challenge, MinTier: Friend},
	{Name: "Thirty Minutes Without Your Phone", Category: Challenge, MinTier: Acquaintance},
	{Name: "Try Something New This Week", Category: Challenge, MinTier: Acquaintance},
	{Name: "Don't Laugh Challenge", Category: Challenge, MinTier: Friend},
	{Name: "Story in Five Messages", Category: Challenge, MinTier: Friend},
}
