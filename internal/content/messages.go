package content

// User-facing fallbacks returned instead of errors.
const (
	TheoryNotConfigured = "Vui lòng nhập API Key để xem nội dung bài học."
	TheoryEmpty         = "Không thể tạo nội dung bài học."
	TheoryFailed        = "Đã xảy ra lỗi khi tải bài học. Vui lòng kiểm tra lại API Key."
	ChatNotConfigured   = "Vui lòng nhập API Key trước khi chat."
	ChatFailed          = "Xin lỗi, tôi đang gặp sự cố kết nối hoặc API Key không hợp lệ."
)

// PlaceholderImagePrefix starts every simulation ImageURL.
const PlaceholderImagePrefix = "https://picsum.photos/800/400?random="
