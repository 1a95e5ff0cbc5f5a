package usecases

import (
	"context"
	"sort"
	"strings"

	"media-publisher/internal/domain/dto"
	"media-publisher/internal/infrastructure/processor"
	consts "media-publisher/pkg/constants"

	"golang.org/x/sync/errgroup"
)

func (s *mediaService) ListMedia(ctx context.Context) (*dto.MediaListResponse, error) {
	var (
		objects []dto.RemoteObject
		videos  []dto.VideoItem
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		objects, err = s.objects.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		videos, err = s.stream.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, asPublishError(err)
	}

	if videos == nil {
		videos = []dto.VideoItem{}
	}
	return &dto.MediaListResponse{Items: dto.MediaItems{
		Images: pairThumbnails(objects),
		Videos: videos,
	}}, nil
}

// pairThumbnails turns a flat object listing into image items. A thumbnail
// URL is attached only when "<base>-thumb<ext>" exists in the listing.
func pairThumbnails(objects []dto.RemoteObject) []dto.ImageItem {
	byName := make(map[string]string, len(objects))
	for _, o := range objects {
		byName[o.Name] = o.URL
	}

	thumbTail := processor.ThumbSuffix + processor.ImageExt
	items := make([]dto.ImageItem, 0, len(objects))
	for _, o := range objects {
		if !strings.HasSuffix(o.Name, processor.ImageExt) || strings.HasSuffix(o.Name, thumbTail) {
			continue
		}
		item := dto.ImageItem{Name: o.Name, URL: o.URL, Type: consts.MediaImage}
		if u, ok := byName[strings.TrimSuffix(o.Name, processor.ImageExt)+thumbTail]; ok {
			item.ThumbnailURL = u
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items
}
