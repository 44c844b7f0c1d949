// Package llm defines the text-generation capability used to author README
// files and an OpenAI-compatible chat-completions client that implements it.
// Configuration is read from the process environment, optionally seeded from a
// .env file in the working directory.
package llm
