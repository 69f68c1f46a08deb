package packet

// Status state ids. Request/response pairs share numbers across directions.
const (
	IDStatusResponse int32 = 0x00 // clientbound
	IDPingResponse   int32 = 0x01 // clientbound
	IDStatusRequest  int32 = 0x00 // serverbound
	IDPingRequest    int32 = 0x01 // serverbound
)

// StatusRequest asks the server for its list JSON. It has no fields.
type StatusRequest struct{}

func (StatusRequest) PacketID() int32 { return IDStatusRequest }

// StatusResponse carries the server list JSON, opaque at this layer.
type StatusResponse struct {
	JSONResponse string `mc:"string"`
}

func (StatusResponse) PacketID() int32 { return IDStatusResponse }

// PingRequest carries an arbitrary 64-bit payload the server echoes back.
type PingRequest struct {
	Payload int64 `mc:"i64"`
}

func (PingRequest) PacketID() int32 { return IDPingRequest }

// PingResponse echoes the ping payload.
type PingResponse struct {
	Payload int64 `mc:"i64"`
}

func (PingResponse) PacketID() int32 { return IDPingResponse }
