package labeler

const labelPrompt = `You are an image analyst. The attached image is a grid of ` +
	`consecutive frames sampled from a single piece of media. Identify the ` +
	`visual content across the frames: objects, people, settings, actions, ` +
	`on-screen text, and anything notable. Respond with a JSON object of the ` +
	`form {"labels": ["label one", "label two", ...]} and nothing else.`
