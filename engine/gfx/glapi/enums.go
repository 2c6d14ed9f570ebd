package glapi

// GL enum values, as defined by the OpenGL registry.
const (
	Framebuffer     uint32 = 0x8D40
	ReadFramebuffer uint32 = 0x8CA8
	DrawFramebuffer uint32 = 0x8CA9
	Renderbuffer    uint32 = 0x8D41

	ColorAttachment0 uint32 = 0x8CE0
	DepthAttachment  uint32 = 0x8D00

	RGBA8            uint32 = 0x8058
	DepthComponent24 uint32 = 0x81A6
	BGRA             uint32 = 0x80E1
	UnsignedByte     uint32 = 0x1401
	PixelPackBuffer  uint32 = 0x88EB
	StreamRead       uint32 = 0x88E1
	ReadOnly         uint32 = 0x88B8

	FramebufferComplete    uint32 = 0x8CD5
	IncompleteAttachment   uint32 = 0x8CD6
	IncompleteMissing      uint32 = 0x8CD7
	FramebufferUnsupported uint32 = 0x8CDD

	NoError                     uint32 = 0
	InvalidEnum                 uint32 = 0x0500
	InvalidValue                uint32 = 0x0501
	InvalidOperation            uint32 = 0x0502
	StackOverflow               uint32 = 0x0503
	StackUnderflow              uint32 = 0x0504
	OutOfMemory                 uint32 = 0x0505
	InvalidFramebufferOperation uint32 = 0x0506
)

// BytesPerPixel is the size of one BGRA8 pixel.
const BytesPerPixel = 4

// ErrorName returns the GL symbolic name for an error code.
func ErrorName(code uint32) string {
	switch code {
	case NoError:
		return "GL_NO_ERROR"
	case InvalidEnum:
		return "GL_INVALID_ENUM"
	case InvalidValue:
		return "GL_INVALID_VALUE"
	case InvalidOperation:
		return "GL_INVALID_OPERATION"
	case StackOverflow:
		return "GL_STACK_OVERFLOW"
	case StackUnderflow:
		return "GL_STACK_UNDERFLOW"
	case OutOfMemory:
		return "GL_OUT_OF_MEMORY"
	case InvalidFramebufferOperation:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	default:
		return "GL_UNKNOWN_ERROR"
	}
}

// StatusName returns the GL symbolic name for a framebuffer status.
func StatusName(status uint32) string {
	switch status {
	case FramebufferComplete:
		return "GL_FRAMEBUFFER_COMPLETE"
	case IncompleteAttachment:
		return "GL_FRAMEBUFFER_INCOMPLETE_ATTACHMENT"
	case IncompleteMissing:
		return "GL_FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT"
	case FramebufferUnsupported:
		return "GL_FRAMEBUFFER_UNSUPPORTED"
	default:
		return "GL_FRAMEBUFFER_STATUS_UNKNOWN"
	}
}

// maxDrain bounds DrainErrors; a lost context can report errors forever.
const maxDrain = 16

// DrainErrors pops every pending error flag and returns the codes in the
// order GL reported them.
func DrainErrors(api API) []uint32 {
	var codes []uint32
	for i := 0; i < maxDrain; i++ {
		code := api.GetError()
		if code == NoError {
			break
		}
		codes = append(codes, code)
	}
	return codes
}
