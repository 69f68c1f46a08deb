package conn

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"fmt"

	"github.com/google/uuid"

	mcnet "github.com/OCharnyshevich/minecraft-client/internal/client/net"
	"github.com/OCharnyshevich/minecraft-client/internal/client/packet"
)

// sharedSecretLen is the AES key size the protocol fixes for the session.
const sharedSecretLen = 16

// Login runs the login exchange: it sends Login-Start and answers the
// server until Login-Success moves the connection to play. playerID may be
// nil for servers that assign one. Returns the UUID the server issued.
func (c *Connection) Login(username string, playerID *uuid.UUID) (uuid.UUID, error) {
	if c.state != StateLogin {
		return uuid.UUID{}, fmt.Errorf("login in state %d: %w", c.state, ErrProtocol)
	}
	c.username = username

	if err := c.writeLoginStart(username, playerID); err != nil {
		return uuid.UUID{}, fmt.Errorf("write login start: %w", err)
	}

	for {
		id, data, err := c.transport.ReadPacket()
		if err != nil {
			return uuid.UUID{}, fmt.Errorf("read login packet: %w", err)
		}

		switch id {
		case packet.IDDisconnectLogin:
			var disconnect packet.DisconnectLogin
			if err := mcnet.Unmarshal(data, &disconnect); err != nil {
				return uuid.UUID{}, fmt.Errorf("unmarshal disconnect: %w", err)
			}
			c.log.Info("disconnected during login", "reason", disconnect.Reason)
			return uuid.UUID{}, &DisconnectError{Reason: disconnect.Reason}

		case packet.IDEncryptionRequest:
			if err := c.handleEncryptionRequest(data); err != nil {
				return uuid.UUID{}, fmt.Errorf("encryption request: %w", err)
			}

		case packet.IDSetCompression:
			var compression packet.SetCompression
			if err := mcnet.Unmarshal(data, &compression); err != nil {
				return uuid.UUID{}, fmt.Errorf("unmarshal set compression: %w", err)
			}
			if compression.Threshold > -1 {
				c.transport.SetThreshold(int(compression.Threshold))
				c.log.Debug("compression enabled", "threshold", compression.Threshold)
			}

		case packet.IDLoginPluginRequest:
			if err := c.handleLoginPluginRequest(data); err != nil {
				return uuid.UUID{}, fmt.Errorf("login plugin request: %w", err)
			}

		case packet.IDLoginSuccess:
			given, err := c.handleLoginSuccess(data)
			if err != nil {
				return uuid.UUID{}, err
			}
			c.state = StatePlay
			c.log.Info("logged in", "username", c.username, "uuid", given.String())
			return given, nil

		default:
			return uuid.UUID{}, fmt.Errorf("unexpected login packet 0x%02X: %w", id, ErrProtocol)
		}
	}
}

func (c *Connection) writeLoginStart(username string, playerID *uuid.UUID) error {
	var buf bytes.Buffer
	if _, err := mcnet.WriteString(&buf, username); err != nil {
		return err
	}
	if playerID == nil {
		buf.WriteByte(0)
	} else {
		buf.WriteByte(1)
		if _, err := mcnet.WriteUUID(&buf, *playerID); err != nil {
			return err
		}
	}
	return c.transport.WritePacket(packet.IDLoginStart, buf.Bytes())
}

// handleEncryptionRequest completes the encryption exchange: a fresh shared
// secret from OS entropy, secret and verify token encrypted with the
// server's public key, then AES/CFB8 on the socket in both directions.
// Session-server authentication is the embedder's business, not ours.
func (c *Connection) handleEncryptionRequest(data []byte) error {
	var request packet.EncryptionRequest
	if err := mcnet.Unmarshal(data, &request); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}

	secret := make([]byte, sharedSecretLen)
	if _, err := rand.Read(secret); err != nil {
		return fmt.Errorf("generate shared secret: %w", err)
	}

	parsed, err := x509.ParsePKIXPublicKey(request.PublicKey)
	if err != nil {
		return fmt.Errorf("parse server public key: %w", err)
	}
	serverKey, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return fmt.Errorf("server public key is %T, not RSA: %w", parsed, ErrProtocol)
	}

	encryptedSecret, err := rsa.EncryptPKCS1v15(rand.Reader, serverKey, secret)
	if err != nil {
		return fmt.Errorf("encrypt shared secret: %w", err)
	}
	encryptedToken, err := rsa.EncryptPKCS1v15(rand.Reader, serverKey, request.VerifyToken)
	if err != nil {
		return fmt.Errorf("encrypt verify token: %w", err)
	}

	err = c.writePacket(&packet.EncryptionResponse{
		SharedSecret: encryptedSecret,
		VerifyToken:  encryptedToken,
	})
	if err != nil {
		return fmt.Errorf("write encryption response: %w", err)
	}

	// The response travels in the clear; everything after is encrypted.
	enc, err := newEncryptedConn(c.conn, secret)
	if err != nil {
		return fmt.Errorf("enable encryption: %w", err)
	}
	c.transport.SetStream(enc)
	c.log.Debug("encryption enabled", "serverID", request.ServerID)
	return nil
}

// handleLoginPluginRequest answers an unknown channel the way the vanilla
// client does: the message id and a false "understood" flag.
func (c *Connection) handleLoginPluginRequest(data []byte) error {
	r := mcnet.NewReader(data)
	messageID, _, err := mcnet.ReadVarInt(r)
	if err != nil {
		return fmt.Errorf("read message id: %w", err)
	}
	// Channel identifier and payload are irrelevant to a channel we will
	// not understand.

	var buf bytes.Buffer
	if _, err := mcnet.WriteVarInt(&buf, messageID); err != nil {
		return err
	}
	buf.WriteByte(0)
	return c.transport.WritePacket(packet.IDLoginPluginResponse, buf.Bytes())
}

func (c *Connection) handleLoginSuccess(data []byte) (uuid.UUID, error) {
	r := mcnet.NewReader(data)
	given, err := mcnet.ReadUUID(r)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("read uuid: %w", err)
	}
	name, err := mcnet.ReadString(r)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("read username: %w", err)
	}
	if name != c.username {
		return uuid.UUID{}, fmt.Errorf("server returned username %q, sent %q: %w", name, c.username, ErrProtocol)
	}
	// Profile properties follow and are not retained.
	return given, nil
}
