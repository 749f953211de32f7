package keys

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Key file names inside the configured directory. They must survive
// process restarts on the same host, otherwise every outstanding token
// becomes unverifiable.
const (
	PrivateKeyFile = "rsa_private_key.pem"
	PublicKeyFile  = "rsa_public_key.pem"
)

// LoadOrGenerate returns the process-wide signing key pair. When both
// key files exist in dir they are decoded and returned; otherwise a
// fresh 2048-bit pair is generated and persisted.
//
// If the directory cannot be written the generated pair is kept in
// memory only. Tokens issued by such a process cannot be validated
// after a restart, so this is logged loudly rather than failing.
//
// A malformed existing key file gets exactly one regeneration attempt.
// If the regenerated pair cannot be persisted either, startup fails:
// silently mixing old and new keys must never happen.
func LoadOrGenerate(dir string, logger zerolog.Logger) (*KeyPair, error) {
	privatePath := filepath.Join(dir, PrivateKeyFile)
	publicPath := filepath.Join(dir, PublicKeyFile)

	if fileExists(privatePath) && fileExists(publicPath) {
		kp, err := loadFromFiles(privatePath, publicPath)
		if err == nil {
			logger.Info().Str("dir", dir).Msg("loaded RSA key pair")
			return kp, nil
		}

		// One regeneration attempt. Outstanding tokens signed with the
		// old key become unverifiable the moment the files are replaced;
		// that is an operational hazard, not something to code around.
		logger.Error().Err(err).Str("dir", dir).Msg("existing key files are unusable, regenerating")
		kp, genErr := generateAndSave(dir, privatePath, publicPath)
		if genErr != nil {
			return nil, fmt.Errorf("key files unusable (%v) and regeneration failed: %w", err, genErr)
		}
		logger.Warn().Str("dir", dir).Msg("RSA key pair regenerated, previously issued tokens are now invalid")
		return kp, nil
	}

	kp, err := generateAndSave(dir, privatePath, publicPath)
	if err == nil {
		logger.Info().Str("dir", dir).Msg("generated and persisted new RSA key pair")
		return kp, nil
	}

	// Degraded mode: keep the pair in memory for this process only.
	kp, memErr := GenerateRSAKeyPair(2048)
	if memErr != nil {
		return nil, fmt.Errorf("failed to generate RSA key pair: %w", memErr)
	}
	logger.Warn().Err(err).Str("dir", dir).
		Msg("key directory not writable, using in-memory key pair; tokens will not survive a restart")
	return kp, nil
}

func loadFromFiles(privatePath, publicPath string) (*KeyPair, error) {
	privatePEM, err := os.ReadFile(privatePath)
	if err != nil {
		return nil, fmt.Errorf("read private key: %w", err)
	}
	publicPEM, err := os.ReadFile(publicPath)
	if err != nil {
		return nil, fmt.Errorf("read public key: %w", err)
	}
	return LoadKeyPairFromPEM(string(privatePEM), string(publicPEM))
}

func generateAndSave(dir, privatePath, publicPath string) (*KeyPair, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create key directory: %w", err)
	}

	kp, err := GenerateRSAKeyPair(2048)
	if err != nil {
		return nil, err
	}

	privatePEM, err := kp.ExportPrivateKeyPEM()
	if err != nil {
		return nil, err
	}
	publicPEM, err := kp.ExportPublicKeyPEM()
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(privatePath, []byte(privatePEM), 0o600); err != nil {
		return nil, fmt.Errorf("write private key: %w", err)
	}
	if err := os.WriteFile(publicPath, []byte(publicPEM), 0o644); err != nil {
		return nil, fmt.Errorf("write public key: %w", err)
	}
	return kp, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
