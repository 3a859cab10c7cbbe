package punctuate

// NewTestPunctuator creates an OpenAIPunctuator around a mock chat client.
func NewTestPunctuator(client chatCompleter, opts ...Option) *OpenAIPunctuator {
	return newPunctuator(client, opts...)
}
