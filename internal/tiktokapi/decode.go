package tiktokapi

import "github.com/tiktoksage/tiksage/internal/model"

// itemPayload mirrors the item detail response. Only the fields we read are
// declared; everything is optional and decodes to its zero value when the
// platform omits it.
type itemPayload struct {
	ItemInfo struct {
		ItemStruct struct {
			Desc   string `json:"desc"`
			Author struct {
				UniqueID string `json:"uniqueId"`
			} `json:"author"`
			Stats struct {
				DiggCount    int64 `json:"diggCount"`
				CommentCount int64 `json:"commentCount"`
				ShareCount   int64 `json:"shareCount"`
			} `json:"stats"`
			Video struct {
				Duration     float64 `json:"duration"`
				Cover        string  `json:"cover"`
				DownloadAddr string  `json:"downloadAddr"`
				PlayAddr     string  `json:"playAddr"`
			} `json:"video"`
		} `json:"itemStruct"`
	} `json:"itemInfo"`
}

// resolve maps the raw payload onto the shared media model. The watermark-free
// download address is preferred; the play address is the fallback.
func (p *itemPayload) resolve() *model.ResolvedMedia {
	item := p.ItemInfo.ItemStruct

	mediaURL := item.Video.DownloadAddr
	if mediaURL == "" {
		mediaURL = item.Video.PlayAddr
	}

	return &model.ResolvedMedia{
		Title:           item.Desc,
		Author:          item.Author.UniqueID,
		Description:     item.Desc,
		DurationSeconds: int(item.Video.Duration),
		LikeCount:       item.Stats.DiggCount,
		CommentCount:    item.Stats.CommentCount,
		ShareCount:      item.Stats.ShareCount,
		ThumbnailURL:    item.Video.Cover,
		DirectMediaURL:  mediaURL,
	}
}
