package ports

type SecretGeneratorInterface interface {
	Generate() (string, error)
}

type TokenHasherInterface interface {
	Fingerprint(secret string) string
}
