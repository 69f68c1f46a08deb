package packet

// Login state, clientbound.
const (
	IDDisconnectLogin    int32 = 0x00
	IDEncryptionRequest  int32 = 0x01
	IDLoginSuccess       int32 = 0x02
	IDSetCompression     int32 = 0x03
	IDLoginPluginRequest int32 = 0x04
)

// Login state, serverbound.
const (
	IDLoginStart          int32 = 0x00
	IDEncryptionResponse  int32 = 0x01
	IDLoginPluginResponse int32 = 0x02
)

// DisconnectLogin terminates the login with a JSON chat reason.
type DisconnectLogin struct {
	Reason string `mc:"string"`
}

func (DisconnectLogin) PacketID() int32 { return IDDisconnectLogin }

// EncryptionRequest starts the online-mode handshake: the server's PKIX
// public key plus a verify token the client must echo encrypted.
type EncryptionRequest struct {
	ServerID    string `mc:"string"`
	PublicKey   []byte `mc:"bytearray"`
	VerifyToken []byte `mc:"bytearray"`
}

func (EncryptionRequest) PacketID() int32 { return IDEncryptionRequest }

// EncryptionResponse carries the shared secret and verify token, both
// encrypted with the server's public key.
type EncryptionResponse struct {
	SharedSecret []byte `mc:"bytearray"`
	VerifyToken  []byte `mc:"bytearray"`
}

func (EncryptionResponse) PacketID() int32 { return IDEncryptionResponse }

// SetCompression installs a frame compression threshold for the rest of the
// session; a negative threshold leaves frames uncompressed.
type SetCompression struct {
	Threshold int32 `mc:"varint"`
}

func (SetCompression) PacketID() int32 { return IDSetCompression }
