// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package corpus

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha512"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/term"
)

// A packed snapshot is a single JSON document holding an entire corpus:
//
//	{"entries": {"ABORT": "...", "ALTER TABLE": "..."}}
//
// An encrypted snapshot wraps the same document in AES-256-GCM with a
// PBKDF2-derived key:
//
//	{"meta": {"key_provider.pbkdf2.mykey": "<base64 kp config>"},
//	 "encrypted_data": "<base64 nonce+ciphertext>"}

// PassphraseFunc supplies a passphrase on demand. It is only invoked when an
// encrypted snapshot is actually encountered.
type PassphraseFunc func() (string, error)

// UnpackSnapshot parses a packed corpus snapshot, decrypting it first when the
// document carries an encrypted_data field. passphrase may be nil for plain
// snapshots.
func UnpackSnapshot(data []byte, passphrase PassphraseFunc) (Corpus, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}

	if _, encrypted := probe["encrypted_data"]; encrypted {
		if passphrase == nil {
			return nil, fmt.Errorf("snapshot is encrypted and no passphrase source was provided")
		}
		pass, err := passphrase()
		if err != nil {
			return nil, err
		}
		data, err = DecryptSnapshot(data, pass)
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt snapshot: %w", err)
		}
	}

	var doc struct {
		Entries map[string]string `json:"entries"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot entries: %w", err)
	}
	if doc.Entries == nil {
		return nil, fmt.Errorf("snapshot has no entries key")
	}

	return Corpus(doc.Entries), nil
}

// DecryptSnapshot decrypts an encrypted corpus snapshot using the provided
// passphrase.
func DecryptSnapshot(data []byte, passphrase string) ([]byte, error) {
	var snap struct {
		Meta struct {
			Key string `json:"key_provider.pbkdf2.mykey"`
		} `json:"meta"`
		EncryptedData string `json:"encrypted_data"`
	}

	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}

	// Decode key provider config
	keyProviderConfig, err := base64.StdEncoding.DecodeString(snap.Meta.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to decode key provider config: %w", err)
	}

	var kpConfig struct {
		Salt       string `json:"salt"`
		Iterations int    `json:"iterations"`
		HashFunc   string `json:"hash_function"`
		KeyLength  int    `json:"key_length"`
	}

	if err = json.Unmarshal(keyProviderConfig, &kpConfig); err != nil {
		return nil, fmt.Errorf("failed to parse key provider config: %w", err)
	}

	// Decode salt
	salt, err := base64.StdEncoding.DecodeString(kpConfig.Salt)
	if err != nil {
		return nil, fmt.Errorf("failed to decode salt: %w", err)
	}

	// Generate key using configured PBKDF2 parameters
	key := pbkdf2.Key(
		[]byte(passphrase),
		salt,
		kpConfig.Iterations,
		kpConfig.KeyLength,
		sha512.New,
	)

	return decryptBody(snap.EncryptedData, key)
}

// GetPassphrase prompts interactively for a passphrase without echoing input.
func GetPassphrase() (string, error) {
	var password []byte
	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, os.Interrupt)

	oldState, err := term.MakeRaw(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	defer term.Restore(int(syscall.Stdin), oldState) //nolint:errcheck

	fmt.Print("Enter passphrase: ")
	defer fmt.Print("\r")

loop:
	for {
		select {
		case <-signalChannel:
			fmt.Println("\nInterrupt received, exiting...")
			return "", fmt.Errorf("interrupted")
		default:
			var buf [1]byte
			n, readErr := syscall.Read(syscall.Stdin, buf[:])
			if readErr != nil || n == 0 {
				break loop
			}
			if buf[0] == '\n' || buf[0] == '\r' {
				break loop
			}
			if buf[0] == 127 || buf[0] == 8 { // Handle backspace
				if len(password) > 0 {
					password = password[:len(password)-1]
					fmt.Print("\b \b")
				}
			} else {
				password = append(password, buf[0])
				fmt.Print("*")
			}
		}
	}
	fmt.Println()
	return string(password), nil
}

// ResolvePassphrase builds a PassphraseFunc that checks the explicit value
// first, then the REFDIFF_PASSPHRASE env variable, then prompts.
func ResolvePassphrase(explicit string) PassphraseFunc {
	return func() (string, error) {
		if explicit != "" {
			return explicit, nil
		}
		if env := os.Getenv("REFDIFF_PASSPHRASE"); env != "" {
			return env, nil
		}
		return GetPassphrase()
	}
}

func decryptBody(encryptedData string, derivedKey []byte) ([]byte, error) {
	// Decode base64 data
	ciphertext, err := base64.StdEncoding.DecodeString(encryptedData)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64: %w", err)
	}

	// Create cipher directly with derived key
	block, err := aes.NewCipher(derivedKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	// Create GCM
	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	// Extract nonce and ciphertext - no salt needed since key is already derived
	nonceSize := aesGCM.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, fmt.Errorf(
			"ciphertext too short: expected at least %d bytes, got %d",
			nonceSize,
			len(ciphertext),
		)
	}

	nonce := ciphertext[:nonceSize]
	encrypted := ciphertext[nonceSize:]

	// Decrypt
	plaintext, err := aesGCM.Open(nil, nonce, encrypted, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}

	return plaintext, nil
}
