package ui

// Localization holds UI text translations. It is constructed once at startup
// and injected into the views that need it; the active language follows the
// persisted setting.
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle         = "app_title"
	KeyAnalyze          = "analyze"
	KeyDownload         = "download"
	KeyPause            = "pause"
	KeyResume           = "resume"
	KeyCancel           = "cancel"
	KeySettings         = "settings"
	KeyHistory          = "history"
	KeyAudioOnly        = "audio_only"
	KeySaveDescription  = "save_description"
	KeyEnterURL         = "enter_url"
	KeyInvalidURL       = "invalid_url"
	KeyPleaseEnterURL   = "please_enter_url"
	KeyReady            = "ready"
	KeyAnalyzing        = "analyzing"
	KeyEnumerating      = "enumerating"
	KeyFoundVideos      = "found_videos"
	KeyConfirmChannel   = "confirm_channel"
	KeyPreparing        = "preparing"
	KeyDownloading      = "downloading"
	KeyPaused           = "paused"
	KeyCompleted        = "completed"
	KeyFailed           = "failed"
	KeyCancelled        = "cancelled"
	KeyBatchDone        = "batch_done"
	KeyDownloadDir      = "download_dir"
	KeyProxyURL         = "proxy_url"
	KeyLanguage         = "language"
	KeyMaxChannelVideos = "max_channel_videos"
	KeyBrowse           = "browse"
	KeySave             = "save"
	KeyNoFFmpeg         = "no_ffmpeg"
	KeySearch           = "search"
	KeyDelete           = "delete"
	KeyClearHistory     = "clear_history"
	KeyHistoryEmpty     = "history_empty"
	KeyVideoBy          = "video_by"
)

// NewLocalization creates a localization manager starting in lang. Unknown
// codes fall back to English.
func NewLocalization(lang string) *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}
	l.initializeTexts()
	l.SetLanguage(lang)
	return l
}

// SetLanguage sets the current language; unknown codes are ignored
func (l *Localization) SetLanguage(lang string) {
	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// Text returns the localized text for key, falling back to English and
// finally to the key itself.
func (l *Localization) Text(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}
	if text, found := l.texts["en"][key]; found {
		return text
	}
	return key
}

// CurrentLanguage returns the active language code
func (l *Localization) CurrentLanguage() string {
	return l.currentLanguage
}

// AvailableLanguages returns the supported codes with display names
func (l *Localization) AvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"es": "Español",
		"pt": "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:         "TikSage",
		KeyAnalyze:          "Analyze",
		KeyDownload:         "Download",
		KeyPause:            "Pause",
		KeyResume:           "Resume",
		KeyCancel:           "Cancel",
		KeySettings:         "Settings",
		KeyHistory:          "History",
		KeyAudioOnly:        "Audio only",
		KeySaveDescription:  "Save description",
		KeyEnterURL:         "Enter a TikTok video or channel URL",
		KeyInvalidURL:       "Not a TikTok URL",
		KeyPleaseEnterURL:   "Please enter a URL",
		KeyReady:            "Ready",
		KeyAnalyzing:        "Analyzing...",
		KeyEnumerating:      "Listing channel videos...",
		KeyFoundVideos:      "Found %d videos",
		KeyConfirmChannel:   "Download %d videos from @%s?",
		KeyPreparing:        "Preparing",
		KeyDownloading:      "Downloading",
		KeyPaused:           "Paused",
		KeyCompleted:        "Completed",
		KeyFailed:           "Failed",
		KeyCancelled:        "Cancelled",
		KeyBatchDone:        "Done: %d downloaded, %d skipped",
		KeyDownloadDir:      "Download folder",
		KeyProxyURL:         "Proxy URL",
		KeyLanguage:         "Language",
		KeyMaxChannelVideos: "Max channel videos (0 = all)",
		KeyBrowse:           "Browse",
		KeySave:             "Save",
		KeyNoFFmpeg:         "ffmpeg not found: audio extraction unavailable",
		KeySearch:           "Search",
		KeyDelete:           "Delete",
		KeyClearHistory:     "Clear history",
		KeyHistoryEmpty:     "No downloads yet",
		KeyVideoBy:          "%s by @%s (%ds)",
	}

	l.texts["es"] = map[string]string{
		KeyAppTitle:         "TikSage",
		KeyAnalyze:          "Analizar",
		KeyDownload:         "Descargar",
		KeyPause:            "Pausar",
		KeyResume:           "Reanudar",
		KeyCancel:           "Cancelar",
		KeySettings:         "Ajustes",
		KeyHistory:          "Historial",
		KeyAudioOnly:        "Solo audio",
		KeySaveDescription:  "Guardar descripción",
		KeyEnterURL:         "Introduce una URL de vídeo o canal de TikTok",
		KeyInvalidURL:       "No es una URL de TikTok",
		KeyPleaseEnterURL:   "Introduce una URL",
		KeyReady:            "Listo",
		KeyAnalyzing:        "Analizando...",
		KeyEnumerating:      "Listando vídeos del canal...",
		KeyFoundVideos:      "%d vídeos encontrados",
		KeyConfirmChannel:   "¿Descargar %d vídeos de @%s?",
		KeyPreparing:        "Preparando",
		KeyDownloading:      "Descargando",
		KeyPaused:           "En pausa",
		KeyCompleted:        "Completado",
		KeyFailed:           "Fallido",
		KeyCancelled:        "Cancelado",
		KeyBatchDone:        "Hecho: %d descargados, %d omitidos",
		KeyDownloadDir:      "Carpeta de descargas",
		KeyProxyURL:         "URL del proxy",
		KeyLanguage:         "Idioma",
		KeyMaxChannelVideos: "Máx. vídeos por canal (0 = todos)",
		KeyBrowse:           "Examinar",
		KeySave:             "Guardar",
		KeyNoFFmpeg:         "ffmpeg no encontrado: extracción de audio no disponible",
		KeySearch:           "Buscar",
		KeyDelete:           "Eliminar",
		KeyClearHistory:     "Borrar historial",
		KeyHistoryEmpty:     "Aún no hay descargas",
		KeyVideoBy:          "%s de @%s (%ds)",
	}

	l.texts["pt"] = map[string]string{
		KeyAppTitle:         "TikSage",
		KeyAnalyze:          "Analisar",
		KeyDownload:         "Baixar",
		KeyPause:            "Pausar",
		KeyResume:           "Retomar",
		KeyCancel:           "Cancelar",
		KeySettings:         "Configurações",
		KeyHistory:          "Histórico",
		KeyAudioOnly:        "Somente áudio",
		KeySaveDescription:  "Salvar descrição",
		KeyEnterURL:         "Digite uma URL de vídeo ou canal do TikTok",
		KeyInvalidURL:       "Não é uma URL do TikTok",
		KeyPleaseEnterURL:   "Digite uma URL",
		KeyReady:            "Pronto",
		KeyAnalyzing:        "Analisando...",
		KeyEnumerating:      "Listando vídeos do canal...",
		KeyFoundVideos:      "%d vídeos encontrados",
		KeyConfirmChannel:   "Baixar %d vídeos de @%s?",
		KeyPreparing:        "Preparando",
		KeyDownloading:      "Baixando",
		KeyPaused:           "Pausado",
		KeyCompleted:        "Concluído",
		KeyFailed:           "Falhou",
		KeyCancelled:        "Cancelado",
		KeyBatchDone:        "Pronto: %d baixados, %d ignorados",
		KeyDownloadDir:      "Pasta de downloads",
		KeyProxyURL:         "URL do proxy",
		KeyLanguage:         "Idioma",
		KeyMaxChannelVideos: "Máx. vídeos por canal (0 = todos)",
		KeyBrowse:           "Procurar",
		KeySave:             "Salvar",
		KeyNoFFmpeg:         "ffmpeg não encontrado: extração de áudio indisponível",
		KeySearch:           "Pesquisar",
		KeyDelete:           "Excluir",
		KeyClearHistory:     "Limpar histórico",
		KeyHistoryEmpty:     "Nenhum download ainda",
		KeyVideoBy:          "%s de @%s (%ds)",
	}
}
