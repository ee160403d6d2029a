package stages

import (
	"fmt"
	"strings"
)

const definitionInstruction = "You are a concise lexicographer."

func definitionPrompt(word string) string {
	return fmt.Sprintf(`For the word '%s':
1. Give a single, clear definition.
2. Give one simple, intuitive example sentence that shows the meaning of the word.

Return a JSON object with the keys "definition" and "example".`, word)
}

const pronounceInstruction = "Say the word"

const mnemonicInstruction = "You are a clever mnemonic generator who builds memorable sound-alike mnemonics."

func mnemonicPrompt(word, definition string) string {
	return fmt.Sprintf(`Create a memorable, sound-alike mnemonic for '%s'.

The word means: %s

Good mnemonics look like this:
- "Pugnacious = 'PUG' + 'ACE' + 'SHUSH' (a pug holding an ace card, shushing)"
- "Redoubtable = 'Red-Outer-Table'"

Keep it short and break the word into parts that sound alike.

Return a JSON object: {"mnemonic_text": "your mnemonic"}`, word, definition)
}

const artDirectorInstruction = "You are an art director who turns mnemonic ideas into descriptive image prompts."

func visualPrompt(mnemonic string) string {
	return fmt.Sprintf(`Turn this mnemonic idea into a visual, descriptive image prompt.

The prompt must NOT contain any letters, words or text of any kind. It is visual only.

Mnemonic idea: "%s"

The image should be:
- Pixar-style, cartoonish and friendly
- Anthropomorphic, with animals or objects acting like people
- Free of human faces and recognizable human features
- Free of visible text, letters or words
- Clear enough that the scene explains the concept on its own

Return only the prompt as plain text, without JSON.`, mnemonic)
}

const storytellerInstruction = "You are a short story writer for vocabulary learners."

func storyPrompt(words []string) string {
	return fmt.Sprintf(`Write a very brief, engaging story (under 100 words) that uses each of these vocabulary words in context: %s

The story must be memorable, have a beginning, a middle and an end, and be suitable for all ages.

Return only the story text with no formatting or explanation.`, strings.Join(words, ", "))
}
