package token

// Tokenizer is a pull based token source. Once EOF is returned every further
// call returns EOF again.
type Tokenizer interface {
	NextToken() Token
}
